package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/storage"
)

// Visit is the client context of one follow-through resolution.
type Visit struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ClickRecorder performs the two writes behind a counted redirect: the atomic
// counter increment and the click event insert. The two are independent by
// design; at-least-once is the accepted contract, so a retry by the client may
// count twice and a crash between the writes leaves the counter ahead of the
// event log.
type ClickRecorder struct {
	store  storage.Store
	logger *zap.Logger
	ch     chan<- storage.ClickRecord
}

func NewClickRecorder(store storage.Store, logger *zap.Logger, ch chan<- storage.ClickRecord) *ClickRecorder {
	return &ClickRecorder{store: store, logger: logger, ch: ch}
}

// Record increments the link counter and queues the click event. The counter
// write uses its own deadline detached from the request context: a client that
// disconnects after triggering the redirect must still be counted.
func (c *ClickRecorder) Record(link *storage.LinkRecord, visit Visit) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.store.IncrementClickCount(ctx, link.ID); err != nil {
		c.logger.Error("click count increment failed",
			zap.String("link_id", link.ID),
			zap.Error(err),
		)
	}

	browser, platform := ParseUserAgent(visit.UserAgent)
	referrer := visit.Referrer
	if referrer == "" {
		referrer = "Direct"
	}

	c.ch <- storage.ClickRecord{
		ID:             uuid.NewString(),
		LinkID:         link.ID,
		Timestamp:      time.Now().UTC(),
		ClientIP:       visit.ClientIP,
		UserAgentRaw:   visit.UserAgent,
		BrowserFamily:  browser,
		PlatformFamily: platform,
		Referrer:       referrer,
	}
}
