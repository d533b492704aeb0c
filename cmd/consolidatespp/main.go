// consolidatespp sums the per-sample abundances of every genome in an
// abundance table into its species-level clade, as defined by a grouping file
// with one comma-delimited clade per line (e.g., dRep clusters at 95% ANI).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/cladesum"
	"github.com/carbocation/cladesum/cladetable"

	_ "github.com/carbocation/cladesum/compileinfoprint"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	var (
		prefix          string
		detectDelimiter bool
		summary         bool
	)
	flag.StringVar(&prefix, "prefix", cladetable.DefaultPrefix, "Prefix for the clade labels, which are followed by the 0-padded line number of the clade in the grouping file. May be empty.")
	flag.BoolVar(&detectDelimiter, "detect-delimiter", false, "Detect the delimiter of the abundance table instead of assuming tabs")
	flag.BoolVar(&summary, "summary", false, "Log per-sample totals, means, medians and maxima of the clade sums to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <abundance.tsv> <clades.csv>\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), `Sums each column of the abundance table over the genomes of each clade.
  Each line of clades.csv is one clade: a comma-delimited list of the genome IDs found in the first column of abundance.tsv.
  Either file may be compressed, and either may be a gs:// path.`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	abundancePath, groupsPath := flag.Arg(0), flag.Arg(1)

	var client *storage.Client
	if cladesum.IsGoogleStoragePath(abundancePath) || cladesum.IsGoogleStoragePath(groupsPath) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	cfg := Config{
		AbundancePath:   abundancePath,
		GroupsPath:      groupsPath,
		Prefix:          &prefix,
		DetectDelimiter: detectDelimiter,
		Summary:         summary,
		Client:          client,
	}

	if err := Run(context.Background(), cfg, STDOUT); err != nil {
		log.Fatalln(err)
	}

	if err := STDOUT.Flush(); err != nil {
		log.Fatalln(err)
	}
}
