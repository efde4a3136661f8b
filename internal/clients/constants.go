package clients

import "time"

const (
	MAX_RETRIES     = 3
	INITIAL_BACKOFF = 500 * time.Millisecond
	MAX_BACKOFF     = 8 * time.Second
	USER_AGENT      = "lyricflow-client/1.0 (+https://github.com/spacesedan/lyricflow)"
)
