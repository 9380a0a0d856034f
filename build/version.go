package build

// CurrentCommit is set by the build process.
var CurrentCommit string

// BuildVersion is the local build version.
const BuildVersion = "0.3.0"

func UserVersion() string {
	return BuildVersion + CurrentCommit
}
