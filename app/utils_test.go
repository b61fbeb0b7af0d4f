package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	actx "go.hackfix.me/fwblock/app/context"
	fwmock "go.hackfix.me/fwblock/firewall/mock"
	"go.hackfix.me/fwblock/notify"
	shmock "go.hackfix.me/fwblock/shell/mock"
)

var timeNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const testExecPath = `C:\Program Files\fwblock\fwblock.exe`

type testApp struct {
	*App
	stdout, stderr *safeBuffer
	env            *mockEnv
	fs             vfs.FileSystem
	fw             *fwmock.Mock
	shell          *shmock.Store
	notes          *recordingNotifier
	dialog         *recordingNotifier
}

type testAppOptions struct {
	admin     bool
	adminErr  error
	extraOpts []Option
}

func newTestApp(ctx context.Context, topts testAppOptions) (*testApp, error) {
	fs := memoryfs.New()
	if err := fs.MkdirAll("/tools", 0o755); err != nil {
		return nil, err
	}
	for _, f := range []string{"/tools/app.exe", "/tools/other.exe"} {
		if err := vfs.WriteFile(fs, f, []byte("MZ"), 0o755); err != nil {
			return nil, err
		}
	}

	var (
		stdout, stderr = newSafeBuffer(), newSafeBuffer()
		env            = &mockEnv{env: map[string]string{}}
		fw             = fwmock.New(slog.New(slog.DiscardHandler))
		store          = shmock.New()
		notes          = &recordingNotifier{}
		dialog         = &recordingNotifier{}
	)

	opts := []Option{
		WithTimeSource(staticTime{timeNow}),
		WithEnv(env),
		WithContext(ctx),
		WithFDs(strings.NewReader(""), stdout, stderr),
		WithFS(fs),
		WithLogger(false, false),
		WithExecPath(testExecPath),
		WithFirewall(fw),
		WithShellStore(store),
		WithPrivilege(staticPrivilege{admin: topts.admin, err: topts.adminErr}),
		WithNotifier(notes),
		WithDialogNotifier(dialog),
	}
	opts = append(opts, topts.extraOpts...)

	app, err := New("fwblock", "/config.json", opts...)
	if err != nil {
		return nil, err
	}

	return &testApp{
		App: app, stdout: stdout, stderr: stderr, env: env,
		fs: fs, fw: fw, shell: store, notes: notes, dialog: dialog,
	}, nil
}

// Run resets the captured output and runs the app with the given arguments.
func (ta *testApp) Run(args ...string) error {
	ta.stdout.Reset()
	ta.stderr.Reset()
	ta.notes.Reset()
	ta.dialog.Reset()

	return ta.App.Run(args)
}

type mockEnv struct {
	mx  sync.RWMutex
	env map[string]string
}

var _ actx.Environment = (*mockEnv)(nil)

func (me *mockEnv) Get(key string) string {
	me.mx.RLock()
	defer me.mx.RUnlock()
	return me.env[key]
}

type staticTime struct {
	t time.Time
}

func (st staticTime) Now() time.Time {
	return st.t
}

type staticPrivilege struct {
	admin bool
	err   error
}

func (sp staticPrivilege) IsAdministrator() (bool, error) {
	return sp.admin, sp.err
}

type notification struct {
	Level notify.Level
	Title string
	Msg   string
}

type recordingNotifier struct {
	mx    sync.Mutex
	notes []notification
}

func (rn *recordingNotifier) Notify(level notify.Level, title, msg string) error {
	rn.mx.Lock()
	defer rn.mx.Unlock()
	rn.notes = append(rn.notes, notification{Level: level, Title: title, Msg: msg})
	return nil
}

func (rn *recordingNotifier) All() []notification {
	rn.mx.Lock()
	defer rn.mx.Unlock()
	return append([]notification(nil), rn.notes...)
}

func (rn *recordingNotifier) Reset() {
	rn.mx.Lock()
	defer rn.mx.Unlock()
	rn.notes = nil
}

// newTestContext returns a context that times out after timeout, and an
// assertion handling function that cancels the context prematurely and fails
// the test if the assertion fails. This is done to avoid waiting for the
// context timeout to be reached.
func newTestContext(t *testing.T, timeout time.Duration) (
	ctx context.Context, cancelCtx func(), assertHandler func(bool),
) {
	ctx, cancelCtx = context.WithTimeout(t.Context(), timeout)
	assertHandler = func(success bool) {
		if !success {
			cancelCtx()
			t.FailNow()
		}
	}

	return
}

// safeBuffer is a thread-safe buffer.
type safeBuffer struct {
	mx  sync.RWMutex
	buf *bytes.Buffer
}

var _ io.Writer = (*safeBuffer)(nil)

func newSafeBuffer() *safeBuffer {
	return &safeBuffer{buf: &bytes.Buffer{}}
}

func (b *safeBuffer) Write(p []byte) (n int, err error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) Reset() {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.buf.Reset()
}

func (b *safeBuffer) String() string {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.buf.String()
}
