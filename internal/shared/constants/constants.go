package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// ScanTimeout bounds one full multi-category backend scan. Port and
	// subdomain enumeration are slow, so the window is generous.
	ScanTimeout = 5 * time.Minute
	// ScoreSecure is the lowest score still reported as low risk.
	ScoreSecure = 80
	// ScoreCaution is the lowest score still reported as medium risk.
	ScoreCaution = 50
)
