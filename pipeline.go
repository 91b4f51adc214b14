package rrpgeconv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const numWorkers = 10

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".gif", ".jpg", ".jpeg":
		return true
	}
	return false
}

type job struct {
	in, out string
}

func outputFile(file string, f Format) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + f.Extension()
}

func (c *Converter) findImages(ctx context.Context, base string, f Format) (<-chan job, <-chan error, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, nil, err
	}
	if !info.IsDir() {
		return nil, nil, errors.New("not a directory")
	}

	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		// Output file, folded to lower case, to the source that claimed it
		claimed := make(map[string]string)

		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal image file
			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			j := job{in: file, out: outputFile(file, f)}
			if other, ok := claimed[strings.ToLower(j.out)]; ok {
				return fmt.Errorf("\"%s\" and \"%s\" both convert to \"%s\"", other, file, j.out)
			}
			claimed[strings.ToLower(j.out)] = file

			select {
			case out <- j:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) imageWorker(ctx context.Context, in <-chan job, f Format) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := c.ConvertFile(j.in, j.out, f); err != nil {
				errc <- &os.PathError{Op: "convert", Path: j.in, Err: err}
				return
			}
			c.logger.Printf("Converted \"%s\" to \"%s\"\n", j.in, j.out)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Build walks the directory at path and converts every PNG, GIF and JPEG
// image found to format f, writing each result next to its source with the
// extension replaced by f.Extension().
func (c *Converter) Build(path string, f Format) error {
	if f.Extension() == "" {
		return errUnknownFormat
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc, err := c.findImages(ctx, dir, f)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := c.imageWorker(ctx, jobs, f)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
