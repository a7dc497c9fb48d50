package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// resolve produces the list of buckets to operate on. Exactly one source
// (the explicit list or the file) must be given.
func (o *bucketOptions) resolve() ([]string, error) {
	if len(o.buckets) > 0 && o.bucketFile != "" {
		return nil, fmt.Errorf("--buckets and --bucket-file are mutually exclusive")
	}

	if len(o.buckets) == 0 && o.bucketFile == "" {
		return nil, fmt.Errorf("no buckets specified - use --buckets or --bucket-file")
	}

	buckets, err := loadBucketList(o.buckets, o.bucketFile)
	if err != nil {
		return nil, err
	}

	if len(buckets) == 0 {
		return nil, fmt.Errorf("bucket source is empty")
	}

	return buckets, nil
}

// loadBucketList combines the explicit bucket list with the names read from
// file (one per line, blank lines and '#' comments ignored), deduplicated
// keeping first-seen order.
func loadBucketList(buckets []string, file string) ([]string, error) {
	list := []string{}

	for _, b := range buckets {
		if name := strings.TrimSpace(b); name != "" {
			list = append(list, name)
		}
	}

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("reading bucket file: %w", err)
		}

		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			name := strings.TrimSpace(scanner.Text())
			if name == "" || strings.HasPrefix(name, "#") {
				continue
			}
			list = append(list, name)
		}

		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading bucket file: %w", err)
		}
	}

	seen := map[string]bool{}
	deduped := []string{}
	for _, name := range list {
		if !seen[name] {
			seen[name] = true
			deduped = append(deduped, name)
		}
	}

	return deduped, nil
}
