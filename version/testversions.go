package version

import (
	"github.com/pkg/errors"

	"github.com/LabMember-001/chainweb-node/types"
)

// ErrUnknownVersion is returned by LookupTestVersion for a name that does
// not match any of the fixed set of versions this binary recognizes. Per
// the open design question this spec tracks, an unrecognized version fails
// closed rather than guessing a default hash algorithm or chain graph.
var ErrUnknownVersion = errors.New("version: unrecognized chainweb version")

// LookupTestVersion resolves name to one of a handful of fixed test
// versions, for the CLI and the reference backend's demo mode. Production
// deployments would instead load a version compiled from real chainweb
// genesis data; no such loader exists here (out of scope).
func LookupTestVersion(name string) (*Version, error) {
	switch name {
	case "test-singleton":
		return New(name, []types.ChainId{0}, nil, 10, types.MaxTarget()), nil
	case "test-pair":
		adjacency := map[types.ChainId][]types.ChainId{
			0: {1},
			1: {},
		}
		return New(name, []types.ChainId{0, 1}, adjacency, 10, types.MaxTarget()), nil
	case "test-trio":
		adjacency := map[types.ChainId][]types.ChainId{
			0: {1, 2},
			1: {0, 2},
			2: {0, 1},
		}
		return New(name, []types.ChainId{0, 1, 2}, adjacency, 5, types.MaxTarget()), nil
	case "non-pow":
		return NewNonPoW(name, []types.ChainId{0}), nil
	default:
		return nil, errors.Wrapf(ErrUnknownVersion, "%q", name)
	}
}
