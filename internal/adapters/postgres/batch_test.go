package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeResults struct {
	execErr  error
	closeErr error
	execs    int
}

func (f *fakeResults) Exec() (pgconn.CommandTag, error) {
	f.execs++
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeResults) Query() (pgx.Rows, error) { return nil, errors.New("not used") }
func (f *fakeResults) QueryRow() pgx.Row { return nil }
func (f *fakeResults) Close() error { return f.closeErr }

type fakeSender struct{ res *fakeResults }

func (s fakeSender) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return s.res }

func queued(n int) *pgx.Batch {
	b := &pgx.Batch{}
	for i := 0; i < n; i++ {
		b.Queue("SELECT 1")
	}
	return b
}

func TestFlushBatch(t *testing.T) {
	res := &fakeResults{}
	if err := flushBatch(context.Background(), fakeSender{res}, queued(3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.execs != 3 {
		t.Errorf("expected 3 execs, got %d", res.execs)
	}
}

func TestFlushBatch_CloseError(t *testing.T) {
	closeErr := errors.New("connection reset")
	err := flushBatch(context.Background(), fakeSender{&fakeResults{closeErr: closeErr}}, queued(2))
	if !errors.Is(err, closeErr) {
		t.Fatalf("expected close error, got %v", err)
	}
}

func TestFlushBatch_ExecErrorWins(t *testing.T) {
	execErr := errors.New("duplicate key")
	res := &fakeResults{execErr: execErr, closeErr: errors.New("connection reset")}
	err := flushBatch(context.Background(), fakeSender{res}, queued(2))
	if !errors.Is(err, execErr) {
		t.Fatalf("expected exec error, got %v", err)
	}
	if !strings.Contains(err.Error(), "batch item 0") {
		t.Errorf("expected failing item in message, got %q", err)
	}
	if res.execs != 1 {
		t.Errorf("expected to stop after first failure, got %d execs", res.execs)
	}
}
