// Package workspace owns the scratch directory where downloaded video and
// extracted audio live between pipeline stages. The directory is single
// tenant: a file lock guards it against concurrent analyzers, and each run
// resets it before creating a fresh session.
package workspace
