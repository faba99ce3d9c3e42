// lmzip is a command-line front end over the lmzip library, in the same
// spirit as the reference corpus's own cmd/wav2flac and cmd/flac2wav: a
// thin demonstration and testing tool, not the production HTTP surface
// (which remains out of this module's scope).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/liamwilbur/lmzip"
	"github.com/liamwilbur/lmzip/lmmodel"
	"github.com/liamwilbur/lmzip/lmtoken"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: lmzip [OPTION]... compress|decompress FILE...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "compress FILE.txt...")
	fmt.Fprintln(os.Stderr, "  Compress text files, writing FILE.lmz.")
	fmt.Fprintln(os.Stderr, "decompress FILE.lmz...")
	fmt.Fprintln(os.Stderr, "  Decompress files produced by compress, writing FILE.txt.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	var (
		force       bool
		modelName   string
		oracleText  string
		maxTokens   int
		verbose     bool
		fingerprint bool
	)
	flag.BoolVar(&force, "f", false, "force overwrite")
	flag.StringVar(&modelName, "model", "uniform", "reference model to drive the coder: uniform|oracle")
	flag.StringVar(&oracleText, "oracle-text", "", "expected plaintext, required when -model=oracle")
	flag.IntVar(&maxTokens, "max-tokens", 0, "abort decompression after this many tokens without EOS (0 = unbounded)")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.BoolVar(&fingerprint, "fingerprint", false, "print a content fingerprint of the compressed payload")
	flag.Usage = usage
	flag.Parse()

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() < 2 {
		usage()
		os.Exit(1)
	}
	command := flag.Arg(0)
	paths := flag.Args()[1:]

	model, tok, err := buildCollaborators(modelName, oracleText)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}

	for _, path := range paths {
		var runErr error
		switch command {
		case "compress":
			runErr = compressFile(model, tok, path, force, fingerprint)
		case "decompress":
			runErr = decompressFile(model, tok, path, force, maxTokens)
		default:
			usage()
			os.Exit(1)
		}
		if runErr != nil {
			logrus.Fatalf("%+v", runErr)
		}
	}
}

func buildCollaborators(modelName, oracleText string) (lmzip.Model, lmzip.Tokenizer, error) {
	tok := lmtoken.ByteLevel{}
	switch modelName {
	case "uniform":
		return lmmodel.NewUniform(lmtoken.VocabSize, lmtoken.EOS), tok, nil
	case "oracle":
		if oracleText == "" {
			return nil, nil, errors.New("lmzip: -model=oracle requires -oracle-text")
		}
		sequence, err := tok.Tokenize(oracleText)
		if err != nil {
			return nil, nil, errors.WithStack(err)
		}
		return lmmodel.NewOracle(sequence, lmtoken.VocabSize, lmtoken.EOS), tok, nil
	default:
		return nil, nil, errors.Errorf("lmzip: unknown -model %q", modelName)
	}
}

func compressFile(model lmzip.Model, tok lmzip.Tokenizer, path string, force, fingerprint bool) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}

	outPath := pathutil.TrimExt(path) + ".lmz"
	if !force {
		exists, err := osutil.Exists(outPath)
		if err != nil {
			return errors.WithStack(err)
		}
		if exists {
			return errors.Errorf("the file %q exists already; use -f flag to force overwrite", outPath)
		}
	}

	ctx := context.Background()
	c := lmzip.Compress(ctx, model, tok, string(text))
	bar := newProgressBar()
	for p := range c.Progress() {
		bar.update(p.Fraction)
	}
	bar.finish()
	payload, err := c.Wait()
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(lmzip.EncodeBase64(payload)), 0o644); err != nil {
		return errors.WithStack(err)
	}
	logrus.WithFields(logrus.Fields{
		"input":  path,
		"output": outPath,
		"bytes":  len(payload),
	}).Info("compressed")
	if fingerprint {
		fmt.Fprintf(os.Stderr, "fingerprint: %s\n", contentFingerprint(payload))
	}
	return nil
}

func decompressFile(model lmzip.Model, tok lmzip.Tokenizer, path string, force bool, maxTokens int) error {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	payload, err := lmzip.DecodeBase64(string(encoded))
	if err != nil {
		return err
	}

	outPath := pathutil.TrimExt(path) + ".txt"
	if !force {
		exists, err := osutil.Exists(outPath)
		if err != nil {
			return errors.WithStack(err)
		}
		if exists {
			return errors.Errorf("the file %q exists already; use -f flag to force overwrite", outPath)
		}
	}

	ctx := context.Background()
	d := lmzip.Decompress(ctx, model, tok, payload, lmzip.DecompressOptions{MaxTokens: maxTokens})
	bar := newProgressBar()
	for p := range d.Progress() {
		bar.update(p.Fraction)
	}
	bar.finish()
	text, err := d.Wait()
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return errors.WithStack(err)
	}
	logrus.WithFields(logrus.Fields{
		"input":  path,
		"output": outPath,
	}).Info("decompressed")
	return nil
}
