package contract

// GitExecutable is the name of the git binary looked up on PATH.
const GitExecutable = "git.exe"
