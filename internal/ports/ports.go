package ports

import (
	"context"
	"time"

	"techdigest/internal/domain"
)

// Fetcher pulls items from one configured source. Implementations normalize
// whatever the upstream format is (story listing, subreddit, feed) into
// RawItems and drop entries missing a title or URL.
type Fetcher interface {
	Source() domain.Source
	Fetch(ctx context.Context) ([]domain.RawItem, error)
}

// Summarizer produces a short human-readable summary for one item. Callers
// bound each call with a per-item timeout and substitute a truncated title
// when it fails.
type Summarizer interface {
	Summarize(ctx context.Context, item domain.ClassifiedItem) (string, error)
}

// Publisher hands a finished digest to one delivery channel.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, digest domain.Digest) error
}

// DigestArchive records published digests for cross-run inspection. The
// pipeline never reads it back.
type DigestArchive interface {
	SaveRun(ctx context.Context, digest domain.Digest, payload []byte) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
