package commands

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"photocat/internal/application"
)

type fakeOpener struct {
	opened []string
}

func (f *fakeOpener) OpenFile(path string) error {
	f.opened = append(f.opened, path)
	return nil
}

func (f *fakeOpener) Command(path string) (*exec.Cmd, error) {
	return exec.Command("true", path), nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestOpenCommand(t *testing.T) {
	s, _ := setupSession(t, map[string]string{"/p/a.jpg": "alpha"})
	mustAddPath(t, s, "/p/a.jpg", false)
	opener := &fakeOpener{}

	got, err := NewOpenCommand(s, opener, "#1").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/p/a.jpg" || len(opener.opened) != 1 {
		t.Errorf("expected /p/a.jpg opened once, got %q %v", got, opener.opened)
	}

	_, err = NewOpenCommand(s, opener, "/p").Execute(context.Background())
	if !errors.Is(err, application.ErrInvalidEntry) {
		t.Errorf("expected directories to be rejected, got %v", err)
	}
}

func TestCopyCommand(t *testing.T) {
	s, _ := setupSession(t, map[string]string{"/p/a.jpg": "alpha"})
	mustAddPath(t, s, "/p/a.jpg", false)

	clip := &fakeClipboard{}
	got, err := NewCopyCommand(s, clip, "/p/a.jpg").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/p/a.jpg" || clip.text != "/p/a.jpg" {
		t.Errorf("expected path on clipboard, got %q", clip.text)
	}

	clip.err = errors.New("no clipboard")
	if _, err := NewCopyCommand(s, clip, "#1").Execute(context.Background()); err == nil {
		t.Error("expected clipboard failure to be reported")
	}
}
