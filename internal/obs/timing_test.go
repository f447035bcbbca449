package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestTimeLogsRequestIDAndError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	ctx := WithRequestID(context.Background(), "r-1")
	if got := RequestID(ctx); got != "r-1" {
		t.Fatalf("RequestID = %q", got)
	}

	func() (err error) {
		defer Time(ctx, "geocode.test")(&err)
		return errors.New("not found")
	}()

	out := buf.String()
	for _, want := range []string{"req_id=r-1", "op=geocode.test", "dur=", "err=not found"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line %q missing %q", out, want)
		}
	}

	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID on bare context = %q", got)
	}
}
