package quizzes

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingConn counts messages and flags any overlapping WriteMessage calls,
// which a real websocket connection would reject.
type recordingConn struct {
	writes     int32
	inFlight   int32
	overlapped int32
}

func (c *recordingConn) WriteMessage(messageType int, data []byte) error {
	if atomic.AddInt32(&c.inFlight, 1) > 1 {
		atomic.StoreInt32(&c.overlapped, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.inFlight, -1)
	atomic.AddInt32(&c.writes, 1)
	return nil
}

func TestWatcherRegistrationDoesNotRaceBroadcast(t *testing.T) {
	quizID := "race-check"
	payload := []byte(`{"leaderboard":[]}`)

	conns := make([]*recordingConn, 0, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		conn := &recordingConn{}
		conns = append(conns, conn)
		wg.Add(2)
		go func(c *recordingConn) {
			defer wg.Done()
			registerWatcher(quizID, c, payload)
		}(conn)
		go func() {
			defer wg.Done()
			pushBoard(quizID, payload)
		}()
	}
	wg.Wait()

	for i, conn := range conns {
		assert.Zero(t, atomic.LoadInt32(&conn.overlapped), fmt.Sprintf("conn %d saw overlapping writes", i))
		assert.GreaterOrEqual(t, atomic.LoadInt32(&conn.writes), int32(1), "every watcher gets the initial snapshot")
	}

	for _, conn := range conns {
		unregisterWatcher(quizID, conn)
	}
	assert.Zero(t, watcherCount(quizID))
}

func TestUnregisterWatcherRemovesOnlyTarget(t *testing.T) {
	quizID := "unregister-check"
	a, b := &recordingConn{}, &recordingConn{}

	registerWatcher(quizID, a, nil)
	registerWatcher(quizID, b, nil)
	assert.Equal(t, 2, watcherCount(quizID))

	unregisterWatcher(quizID, a)
	assert.Equal(t, 1, watcherCount(quizID))

	pushBoard(quizID, []byte("{}"))
	assert.Zero(t, atomic.LoadInt32(&a.writes))
	assert.Equal(t, int32(1), atomic.LoadInt32(&b.writes))

	unregisterWatcher(quizID, b)
	assert.Zero(t, watcherCount(quizID))
}
