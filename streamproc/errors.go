package streamproc

import "github.com/errajibadr/langgraph-agent-repo/streamproc/streamerr"

func newConfigError(msg string) *streamerr.Error {
	return streamerr.New(streamerr.ConfigInvalid, msg)
}

func newConfigErrorf(format string, args ...any) *streamerr.Error {
	return streamerr.Newf(streamerr.ConfigInvalid, format, args...)
}
