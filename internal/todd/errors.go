package todd

import "github.com/pkg/errors"

// ErrNoProgress indicates an accepted reduction did not shrink the table by
// its score, which means the scoring and the merge disagree.
var ErrNoProgress = errors.New("todd: reduction did not lower the T-count by its score")
