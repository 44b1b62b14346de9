package params

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// EngineVersion is the semantic version of the evaluation engine. It is part
// of every parameter set's identity: the same parameters under a different
// engine version form a distinct set, because level predicates may have
// changed between versions.
const EngineVersion = "1.0.0"

// ValidateEngineVersion checks that a version string is valid semver.
func ValidateEngineVersion(version string) error {
	if _, err := semver.StrictNewVersion(version); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidEngineVersion, err, "invalid engine version %q", version)
	}

	return nil
}

// CheckVersionCompatibility reports whether a parameter set created under
// setVersion may drive an engine running engineVersion. Major and minor must
// match exactly; patch releases never change level predicates, so they are
// interchangeable. "main" marks a development build and skips the check.
func CheckVersionCompatibility(engineVersion, setVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	setVersion = strings.TrimPrefix(setVersion, "v")

	if engineVersion == "main" || setVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidEngineVersion, err, "invalid engine version %q", engineVersion)
	}

	setSemver, err := semver.NewVersion(setVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidEngineVersion, err, "invalid parameter set engine version %q", setVersion)
	}

	if engineSemver.Major() != setSemver.Major() || engineSemver.Minor() != setSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidEngineVersion,
			"parameter set was created for engine %s but this engine is %s; recreate it under the current version",
			setVersion, engineVersion)
	}

	return nil
}
