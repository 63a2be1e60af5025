package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lixenwraith/depthcolor/colorize"
	"github.com/lixenwraith/depthcolor/depthio"
)

// frameRef addresses one frame: an image file or an index into a raw sequence
type frameRef struct {
	path  string
	seq   *depthio.Sequence
	index int
}

// frameSet flattens every input into one navigable frame list
type frameSet struct {
	refs []frameRef
	seqs []*depthio.Sequence
}

// openFrames indexes inputs; image files are decoded lazily, raw dumps are mapped now
func openFrames(paths []string, layout depthio.RawLayout) (*frameSet, error) {
	s := &frameSet{}
	for _, path := range paths {
		if depthio.IsImagePath(path) {
			s.refs = append(s.refs, frameRef{path: path})
			continue
		}

		seq, err := depthio.OpenSequence(path, layout)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.seqs = append(s.seqs, seq)
		for i := 0; i < seq.Len(); i++ {
			s.refs = append(s.refs, frameRef{path: path, seq: seq, index: i})
		}
	}
	if len(s.refs) == 0 {
		return nil, errors.New("no input frames")
	}
	return s, nil
}

func (s *frameSet) Len() int {
	return len(s.refs)
}

// Load returns a fresh copy of frame i; callers may colorize it in place
func (s *frameSet) Load(i int) (*colorize.Frame, error) {
	if i < 0 || i >= len(s.refs) {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", i, len(s.refs))
	}
	ref := s.refs[i]
	if ref.seq == nil {
		return depthio.LoadImage(ref.path)
	}
	return ref.seq.Frame(ref.index)
}

// Label names frame i for status lines and logs
func (s *frameSet) Label(i int) string {
	ref := s.refs[i]
	if ref.seq == nil || ref.seq.Len() == 1 {
		return filepath.Base(ref.path)
	}
	return fmt.Sprintf("%s#%d", filepath.Base(ref.path), ref.index)
}

func (s *frameSet) Close() error {
	var errs []error
	for _, seq := range s.seqs {
		errs = append(errs, seq.Close())
	}
	s.seqs = nil
	return errors.Join(errs...)
}

// parseSize reads a WxH raw frame size; empty means unset
func parseSize(s string) (w, h int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q, want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return w, h, nil
}

// outputPath numbers per-frame PNG outputs: out.png becomes out_0003.png
func outputPath(out string, i, n int) string {
	if n <= 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(out, ext), i, ext)
}
