package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mensa-darmstadt/openmensa-parser/internal/feeddef"
	"github.com/mensa-darmstadt/openmensa-parser/internal/mensa"
	"github.com/mensa-darmstadt/openmensa-parser/internal/openmensa"
	"github.com/mensa-darmstadt/openmensa-parser/internal/parser"
	"github.com/mensa-darmstadt/openmensa-parser/internal/storage"
	"github.com/mensa-darmstadt/openmensa-parser/pkg/logger"
)

// Batch exporter: fetches and translates each requested canteen
// concurrently and writes one <canteenId>.xml per canteen. A failing canteen
// is logged and skipped; it never takes down its siblings.

type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	var canteens, feedDefs stringList
	flag.Var(&canteens, "canteen", "canteen ID to export (repeatable, at least one required)")
	from := flag.String("from", "", "start date YYYY-MM-DD (default: unbounded)")
	to := flag.String("to", "", "end date YYYY-MM-DD (default: unbounded)")
	out := flag.String("out", "./out", "output directory")
	flag.Var(&feedDefs, "feed", "feed definition canteenId;name;priority;url;hour[;minute[;dayOfWeek[;dayOfMonth[;month[;retry]]]]] (repeatable)")
	bucket := flag.Bool("bucket", false, "also publish exports to the MinIO bucket configured via MINIO_* env")
	flag.Parse()

	if len(canteens) == 0 {
		logger.Fatalf("at least one -canteen is required")
	}

	fromDate, err := parseDate(*from)
	if err != nil {
		logger.Fatalf("invalid -from date: %v", err)
	}
	toDate, err := parseDate(*to)
	if err != nil {
		logger.Fatalf("invalid -to date: %v", err)
	}

	extraFeeds, err := feeddef.ParseAll(feedDefs)
	if err != nil {
		logger.Fatalf("invalid feed definition: %v", err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Fatalf("failed to create output directory %q: %v", *out, err)
	}

	var store *storage.FeedStore
	if *bucket {
		store, err = storage.NewFeedStore(storage.LoadMinIOConfig())
		if err != nil {
			logger.Fatalf("failed to set up feed store: %v", err)
		}
	}

	p := parser.New(mensa.NewClient(os.Getenv("MENSA_GRAPHQL_URL")))
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0
	for _, id := range canteens {
		wg.Add(1)
		go func(canteenID string) {
			defer wg.Done()
			if err := exportCanteen(ctx, p, store, canteenID, fromDate, toDate, *out, extraFeeds[canteenID]); err != nil {
				logger.Errorf("failed to export canteen %q: %v", canteenID, err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	if failed > 0 {
		logger.Warnf("%d of %d canteen exports failed", failed, len(canteens))
		os.Exit(1)
	}
	logger.Infof("exported %d canteens to %s", len(canteens), *out)
}

func exportCanteen(ctx context.Context, p *parser.Parser, store *storage.FeedStore, canteenID string, from, to *time.Time, outDir string, feeds []openmensa.Feed) error {
	doc, err := p.FeedForRange(ctx, canteenID, from, to)
	if err != nil {
		return err
	}
	doc.Canteen.Feeds = append(doc.Canteen.Feeds, feeds...)

	body, err := doc.Serialize()
	if err != nil {
		return err
	}

	name := canteenID + ".xml"
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return err
	}
	logger.Debugf("wrote data for canteen %q to %s", canteenID, path)

	if store != nil {
		if err := store.Publish(ctx, name, []byte(body)); err != nil {
			return err
		}
		logger.Debugf("published %s to feed store", name)
	}
	return nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
