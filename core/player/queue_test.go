package player

import (
	"testing"

	"soundest/model"
)

func song(title, audio string) model.Song {
	return model.Song{Title: title, AudioURL: audio}
}

func threeSongs() []model.Song {
	return []model.Song{
		song("A", "http://cdn/a.mp3"),
		song("B", "http://cdn/b.mp3"),
		song("C", "http://cdn/c.mp3"),
	}
}

func TestQueue(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		q := NewQueue()
		if _, ok := q.Current(); ok {
			t.Error("expected no current song on an empty queue")
		}
		q.Next()
		q.Previous()
		if _, ok := q.Current(); ok {
			t.Error("navigation on an empty queue must stay empty")
		}
	})

	t.Run("ReplaceEmptiesQueue", func(t *testing.T) {
		q := NewQueue()
		q.Replace(threeSongs(), 1)
		q.Replace(nil, 5)
		if _, ok := q.Current(); ok {
			t.Error("replacing with an empty list must empty the queue")
		}
		if q.Len() != 0 {
			t.Errorf("expected length 0, got %d", q.Len())
		}
	})

	t.Run("NavigationScenario", func(t *testing.T) {
		q := NewQueue()
		q.Replace(threeSongs(), 0)

		steps := []struct {
			move func()
			want string
		}{
			{q.Next, "B"},
			{q.Next, "C"},
			{q.Next, "A"}, // wraps past the end
			{q.Previous, "C"},
		}
		for i, step := range steps {
			step.move()
			cur, ok := q.Current()
			if !ok {
				t.Fatalf("step %d: queue unexpectedly empty", i)
			}
			if cur.Title != step.want {
				t.Errorf("step %d: expected %s, got %s", i, step.want, cur.Title)
			}
		}
	})

	t.Run("NextIsCyclic", func(t *testing.T) {
		q := NewQueue()
		q.Replace(threeSongs(), 1)
		for i := 0; i < q.Len(); i++ {
			q.Next()
		}
		if q.Index() != 1 {
			t.Errorf("len(songs) calls to Next must return to the start: got index %d", q.Index())
		}
	})

	t.Run("PreviousInvertsNext", func(t *testing.T) {
		q := NewQueue()
		q.Replace(threeSongs(), 0)
		for start := 0; start < 3; start++ {
			q.Replace(threeSongs(), start)
			q.Next()
			q.Previous()
			if q.Index() != start {
				t.Errorf("previous(next(q)) from %d: got %d", start, q.Index())
			}
			q.Previous()
			q.Next()
			if q.Index() != start {
				t.Errorf("next(previous(q)) from %d: got %d", start, q.Index())
			}
		}
	})

	t.Run("SetSingleIdempotent", func(t *testing.T) {
		q := NewQueue()
		q.Replace(threeSongs(), 2)
		playing, _ := q.Current()

		q.SetSingle(playing)
		if q.Len() != 1 || q.Index() != 0 {
			t.Fatalf("first SetSingle must collapse the queue: len=%d index=%d", q.Len(), q.Index())
		}
		q.SetSingle(playing)
		if q.Len() != 1 || q.Index() != 0 {
			t.Errorf("repeated SetSingle with the same audio URL must not change state")
		}

		q.SetSingle(song("D", "http://cdn/d.mp3"))
		cur, _ := q.Current()
		if cur.Title != "D" {
			t.Errorf("SetSingle with a new audio URL must replace the queue, got %s", cur.Title)
		}
	})

	t.Run("ClampsStartIndex", func(t *testing.T) {
		q := NewQueue()
		q.Replace(threeSongs(), 99)
		if q.Index() != 2 {
			t.Errorf("oversized start index must clamp to the last song, got %d", q.Index())
		}
		q.Replace(threeSongs(), -4)
		if q.Index() != 0 {
			t.Errorf("negative start index must clamp to the first song, got %d", q.Index())
		}
	})

	t.Run("SongsReturnsCopy", func(t *testing.T) {
		q := NewQueue()
		q.Replace(threeSongs(), 0)
		songs := q.Songs()
		songs[0].Title = "mutated"
		cur, _ := q.Current()
		if cur.Title != "A" {
			t.Error("mutating the returned slice must not affect the queue")
		}
	})
}
