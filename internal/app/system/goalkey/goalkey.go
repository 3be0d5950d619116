// internal/app/system/goalkey/goalkey.go

// Package goalkey builds the derived document keys shared by every reader and
// writer of the userGoals collection. The key format is load-bearing: a
// progress record written under one format is unreachable under another, so
// all call sites must go through these constructors.
package goalkey

import "strings"

// UserGoal returns the userGoals document id for a (userId, goalId) pair.
func UserGoal(userID, goalID string) string {
	return userID + "_" + goalID
}

// Split breaks a userGoals document id back into its (userId, goalId) parts.
// Returns false if the id does not contain a separator. User ids produced by
// the upstream auth provider never contain underscores; goal ids may, so the
// split happens at the first separator.
func Split(key string) (userID, goalID string, ok bool) {
	i := strings.Index(key, "_")
	if i < 0 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}
