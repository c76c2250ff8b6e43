package job

import (
	"context"
	"errors"
	"testing"
)

func TestJobFunc_RunsClosure(t *testing.T) {
	t.Parallel()
	ran := false
	j := New(func(context.Context) error {
		ran = true
		return nil
	})
	if err := j.Run(context.Background()); err != nil || !ran {
		t.Fatalf("Run: ran=%v err=%v", ran, err)
	}
}

func TestJobFunc_NilClosure(t *testing.T) {
	t.Parallel()
	j := New(nil)
	if err := j.Run(context.Background()); !errors.Is(err, ErrNilJobFunc) {
		t.Fatalf("expected ErrNilJobFunc, got %v", err)
	}
}

func TestShardLabel_StableAndBounded(t *testing.T) {
	t.Parallel()
	a := ShardLabel("movie:42")
	b := ShardLabel("movie:42")
	if a != b {
		t.Fatalf("label not stable: %s vs %s", a, b)
	}
	if ShardLabel("movie:42") == "" {
		t.Fatal("empty label")
	}
}
