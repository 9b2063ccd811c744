/*
Copyright (c) YugabyteDB, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/Printi/db-dump-file-anonymizer/src/anon"
	"github.com/Printi/db-dump-file-anonymizer/src/config"
	"github.com/Printi/db-dump-file-anonymizer/src/datafile"
	"github.com/Printi/db-dump-file-anonymizer/src/errs"
	"github.com/Printi/db-dump-file-anonymizer/src/lockfile"
	"github.com/Printi/db-dump-file-anonymizer/src/pbreporter"
	"github.com/Printi/db-dump-file-anonymizer/src/rewriter"
	"github.com/Printi/db-dump-file-anonymizer/src/utils"
	"github.com/Printi/db-dump-file-anonymizer/src/utils/jsonfile"
)

var (
	inputPath         string
	outputPath        string
	readBufferSize    string
	writeBufferSize   string
	reserveSize       string
	seed              int64
	hashSalt          string
	uniqueMaxAttempts int
	uniqueStoreDir    string
	statsFile         string
	disablePb         bool
	quiet             bool
)

var anonymizeCmd = &cobra.Command{
	Use:   "anonymize",
	Short: "Rewrite a dump, replacing the configured column values with fake data",
	Long: `Reads a mysqldump-style dump from --input and writes it to --output. Values of the
columns named in the modification spec are replaced by generated values; everything
else, including INSERTs into other tables, is copied byte for byte.

--input accepts a local path, "-" for stdin, an object URL (s3://, gs://,
https://<account>.blob.core.windows.net/) or any other http(s):// URL.
--output accepts a local path or "-" for stdout.`,

	Run: func(cmd *cobra.Command, args []string) {
		stats, err := anonymize()
		if err != nil {
			utils.ErrExit("anonymize %q: %w", inputPath, err)
		}
		if !quiet {
			printSummary(stats)
		}
	},
}

func init() {
	rootCmd.AddCommand(anonymizeCmd)

	f := anonymizeCmd.Flags()
	f.StringVarP(&inputPath, "input", "i", "",
		"dump to read: a local file, \"-\" for stdin, an s3://, gs:// or Azure blob URL, or an http(s) URL")
	f.StringVarP(&outputPath, "output", "o", "",
		"file to write the anonymized dump to, or \"-\" for stdout")
	registerSpecFlags(anonymizeCmd)
	registerLocaleFlag(anonymizeCmd)

	f.StringVar(&readBufferSize, "read-buffer-size", "1MiB",
		"size of each read from the input (e.g. 4096, 64KiB, 1MB)")
	f.StringVar(&writeBufferSize, "write-buffer-size", "8MiB",
		"output is flushed once this many bytes are pending")
	f.StringVar(&reserveSize, "reserve-size", "1GiB",
		"space to pre-allocate for a file output when the input size is unknown (0 disables)")
	f.Int64Var(&seed, "seed", 0,
		"seed for the value generators; runs with the same seed and input produce the same output (0 = random)")
	f.StringVar(&hashSalt, "hash-salt", "",
		"salt of the 'hash' format (default: random per run)")
	f.IntVar(&uniqueMaxAttempts, "unique-max-attempts", anon.DEFAULT_UNIQUE_MAX_ATTEMPTS,
		"attempts a unique column makes to find an unused value before the run fails")
	f.StringVar(&uniqueStoreDir, "unique-store-dir", "",
		"keep the values already used by unique columns in a sqlite db in this directory instead of memory")
	f.StringVar(&statsFile, "stats-file", "",
		"write the run statistics as JSON to this file")
	f.BoolVar(&disablePb, "disable-pb", false,
		"disable the progress bar")
	f.BoolVarP(&quiet, "quiet", "q", false,
		"do not print the summary")

	anonymizeCmd.MarkFlagRequired("input")
	anonymizeCmd.MarkFlagRequired("output")
}

func buildRunOptions() (rewriter.Options, error) {
	opts := rewriter.DefaultOptions()
	var err error
	opts.ReadBufferSize, err = config.ParseBufferSize("read-buffer-size", readBufferSize)
	if err != nil {
		return opts, err
	}
	opts.WriteBufferSize, err = config.ParseBufferSize("write-buffer-size", writeBufferSize)
	if err != nil {
		return opts, err
	}
	opts.ReserveSize, err = config.ParseByteSize("reserve-size", reserveSize, 0)
	if err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

func checkStreams() error {
	if outputPath != datafile.STDIO_PATH && inputPath != datafile.STDIO_PATH && utils.SamePath(inputPath, outputPath) {
		return errs.NewConfigError(errs.CONFIG_SOURCE_STREAM, "output",
			fmt.Errorf("output %q is the input file", outputPath))
	}
	return nil
}

// cleanup runs f once, either when the caller defers it or when the process exits early.
func cleanup(f func()) func() {
	var once sync.Once
	g := func() { once.Do(f) }
	atexit.Register(g)
	return g
}

// lockOutput guards a file output against a concurrent run.
func lockOutput() (func(), error) {
	if outputPath == datafile.STDIO_PATH {
		return func() {}, nil
	}
	lf, err := lockfile.NewLockfile(outputPath)
	if err != nil {
		return nil, err
	}
	err = lf.Lock()
	if err != nil {
		return nil, err
	}
	return cleanup(func() {
		err := lf.Unlock()
		if err != nil {
			log.Warnf("unlock %q: %v", lf.Path(), err)
		}
	}), nil
}

func newUniqueStoreFactory() (anon.UniqueStoreFactory, func(), error) {
	if uniqueStoreDir == "" {
		return anon.NewMemoryUniqueStore, func() {}, nil
	}
	dir, err := utils.AbsPath(uniqueStoreDir)
	if err != nil {
		return nil, nil, err
	}
	err = utils.EnsureDir(dir)
	if err != nil {
		return nil, nil, err
	}
	stores, err := anon.NewSqliteUniqueStores(dir)
	if err != nil {
		return nil, nil, err
	}
	return stores.Factory(), cleanup(func() {
		err := stores.Close()
		if err != nil {
			log.Warnf("close unique value store: %v", err)
		}
	}), nil
}

func anonymize() (*rewriter.Stats, error) {
	opts, err := buildRunOptions()
	if err != nil {
		return nil, err
	}
	spec, err := loadModificationSpec()
	if err != nil {
		return nil, err
	}
	err = anon.ValidateLocale(locale)
	if err != nil {
		return nil, errs.NewConfigError(errs.CONFIG_SOURCE_RUN_CONFIG, "locale", err)
	}
	err = checkStreams()
	if err != nil {
		return nil, err
	}
	unlock, err := lockOutput()
	if err != nil {
		return nil, err
	}
	defer unlock()
	uniqueStore, closeStore, err := newUniqueStoreFactory()
	if err != nil {
		return nil, err
	}
	defer closeStore()
	faker, err := anon.NewFaker(anon.FakerConfig{
		Locale:            locale,
		Seed:              seed,
		HashSalt:          hashSalt,
		UniqueMaxAttempts: uniqueMaxAttempts,
		UniqueStore:       uniqueStore,
	})
	if err != nil {
		return nil, err
	}

	src, err := datafile.OpenSource(inputPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	sink, err := datafile.CreateSink(outputPath)
	if err != nil {
		return nil, err
	}
	opts.Progress = pbreporter.NewProgressReporter(src.Path, src.Size, disablePb || quiet)

	stats, err := rewriter.Run(src, sink, spec, faker, opts)
	if err != nil {
		sink.Close()
		return nil, err
	}
	err = sink.Close()
	if err != nil {
		return nil, fmt.Errorf("close output %q: %w", outputPath, err)
	}
	stats.Seed = faker.Seed()

	if statsFile != "" {
		err = jsonfile.NewJsonFile[rewriter.Stats](statsFile).Create(stats)
		if err != nil {
			return nil, fmt.Errorf("write stats file: %w", err)
		}
		log.Infof("wrote run statistics to %q", statsFile)
	}
	return stats, nil
}
