package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"mkvslim/internal/apperr"
)

// Requirement defines an external tool mkvslim relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// Requirements returns the tool list for the configured binaries. mkvmerge
// performs every remux and is required; ffprobe only improves probing.
func Requirements(mkvmergeBinary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "mkvmerge",
			Command:     fallback(mkvmergeBinary, "mkvmerge"),
			Description: "Required for remuxing (MKVToolNix)",
		},
		{
			Name:        "ffprobe",
			Command:     fallback(ffprobeBinary, "ffprobe"),
			Description: "Preferred stream probe; mkvmerge -J is used without it",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		results = append(results, status)
	}
	return results
}

// RequireAll returns an ErrDependency error naming every unavailable
// required tool. Optional tools never fail the check.
func RequireAll(statuses []Status) error {
	var missing []string
	for _, status := range statuses {
		if status.Available || status.Optional {
			continue
		}
		missing = append(missing, status.Name)
	}
	if len(missing) == 0 {
		return nil
	}
	return apperr.Wrap(
		apperr.ErrDependency,
		"deps",
		"require",
		fmt.Sprintf("required tool not found: %s", strings.Join(missing, ", ")),
		nil,
	)
}

// MissingOptional returns the optional tools that are unavailable.
func MissingOptional(statuses []Status) []Status {
	var out []Status
	for _, status := range statuses {
		if status.Optional && !status.Available {
			out = append(out, status)
		}
	}
	return out
}

func fallback(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}
