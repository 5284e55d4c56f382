package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/mdem"
)

// variants maps a golden file suffix to the options it is rendered with.
var variants = map[string][]mdem.RenderOption{
	"":       nil,
	".lines": {mdem.WithLineMode(true)},
}

func main() {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no markdown files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		for suffix, opts := range variants {
			var out bytes.Buffer
			err := mdem.RenderDocument(mdem.RenderRequest{
				Reader:  bytes.NewReader(src),
				Writer:  &out,
				Options: opts,
			})
			if err != nil {
				fatalf("render %s%s: %v", path, suffix, err)
			}
			goldenPath := strings.TrimSuffix(path, ".md") + suffix + ".golden"
			if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
				fatalf("write %s: %v", goldenPath, err)
			}
			fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
