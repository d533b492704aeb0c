package main

import (
	"bufio"
	"context"
	"io"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/cladesum"
	"github.com/carbocation/cladesum/aggregate"
	"github.com/carbocation/cladesum/cladetable"
	"github.com/carbocation/cladesum/groupindex"
	"github.com/carbocation/pfx"
)

type Config struct {
	AbundancePath   string
	GroupsPath      string
	DetectDelimiter bool
	Summary         bool

	// Prefix overrides cladetable.DefaultPrefix when non-nil, even if empty
	Prefix *string

	// Client is only needed for gs:// paths
	Client *storage.Client
}

// Run loads the grouping file, aggregates the abundance table and only then
// writes the clade table to w, so a failure leaves w untouched.
func Run(ctx context.Context, cfg Config, w io.Writer) error {
	idx, err := loadGroups(ctx, cfg)
	if err != nil {
		return err
	}
	log.Println("Loaded", idx.Size(), "genomes in", idx.Len(), "clades from", cfg.GroupsPath)

	table, err := aggregateAbundance(ctx, cfg, idx)
	if err != nil {
		return err
	}
	log.Println("Summed", table.Rows, "rows of", cfg.AbundancePath, "into", len(table.Sums), "clades across", len(table.Header), "samples")

	if cfg.Summary {
		if err := logSummary(table); err != nil {
			return err
		}
	}

	return cladetable.Write(w, table, cladetable.Options{Prefix: cfg.Prefix})
}

func loadGroups(ctx context.Context, cfg Config) (*groupindex.Index, error) {
	f, err := cladesum.OpenTable(ctx, cfg.GroupsPath, cfg.Client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	idx, err := groupindex.Load(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return idx, nil
}

func aggregateAbundance(ctx context.Context, cfg Config, idx *groupindex.Index) (*aggregate.Table, error) {
	f, err := cladesum.OpenTable(ctx, cfg.AbundancePath, cfg.Client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, cladesum.SniffBytes)

	agg := aggregate.New(idx)
	if cfg.DetectDelimiter {
		delim := cladesum.SniffDelimiter(br)
		log.Printf("Determined abundance table delimiter to be %q\n", string(delim))
		agg.SetDelimiter(delim)
	}

	if err := agg.Consume(br); err != nil {
		return nil, pfx.Err(err)
	}

	return agg.Result(), nil
}

func logSummary(table *aggregate.Table) error {
	summaries, err := table.Summarize()
	if err != nil {
		return pfx.Err(err)
	}

	for _, s := range summaries {
		log.Printf("%s: total %s over %d clades (mean %s, median %s, max %s)\n",
			s.Sample,
			cladetable.FormatValue(s.Total),
			s.Clades,
			cladetable.FormatValue(s.Mean),
			cladetable.FormatValue(s.Median),
			cladetable.FormatValue(s.Max))
	}

	return nil
}
