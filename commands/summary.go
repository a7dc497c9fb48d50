package commands

import (
	"fmt"
	"io"
	"sync"
)

// summary accumulates per-bucket outcomes across the run. Buckets complete
// concurrently, so every record method takes the lock.
type summary struct {
	sync.Mutex

	ok          []string
	wouldChange []string
	changed     []string
	skipped     []skipRecord
	errors      []errorRecord
}

type skipRecord struct {
	bucket string
	reason string
}

type errorRecord struct {
	bucket string
	err    error
}

func (s *summary) recordOK(bucket string) {
	s.Lock()
	defer s.Unlock()

	s.ok = append(s.ok, bucket)
}

func (s *summary) recordWouldChange(bucket string) {
	s.Lock()
	defer s.Unlock()

	s.wouldChange = append(s.wouldChange, bucket)
}

func (s *summary) recordChanged(bucket string) {
	s.Lock()
	defer s.Unlock()

	s.changed = append(s.changed, bucket)
}

func (s *summary) recordSkipped(bucket, reason string) {
	s.Lock()
	defer s.Unlock()

	s.skipped = append(s.skipped, skipRecord{bucket: bucket, reason: reason})
}

func (s *summary) recordError(bucket string, err error) {
	s.Lock()
	defer s.Unlock()

	s.errors = append(s.errors, errorRecord{bucket: bucket, err: err})
}

func (s *summary) failed() int {
	s.Lock()
	defer s.Unlock()

	return len(s.errors)
}

func (s *summary) write(w io.Writer) {
	s.Lock()
	defer s.Unlock()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Summary ===")
	fmt.Fprintf(w, "  ok            %v\n", len(s.ok))
	fmt.Fprintf(w, "  would change  %v\n", len(s.wouldChange))
	fmt.Fprintf(w, "  changed       %v\n", len(s.changed))
	fmt.Fprintf(w, "  skipped       %v\n", len(s.skipped))
	fmt.Fprintf(w, "  errors        %v\n", len(s.errors))

	if len(s.wouldChange) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Buckets that would change:")
		for _, bucket := range s.wouldChange {
			fmt.Fprintf(w, " - %v\n", bucket)
		}
	}

	if len(s.errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors:")
		for _, e := range s.errors {
			fmt.Fprintf(w, " - %v: %v\n", e.bucket, e.err)
		}
	}
}
