package aggregator

import (
	"reflect"
	"testing"
	"time"

	"github.com/xa0c/tally/internal/model"
)

func rec(level model.Level) model.Record {
	return model.Record{
		Timestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Level:     level,
		Message:   "msg",
	}
}

func TestCount(t *testing.T) {
	records := []model.Record{
		rec(model.LevelInfo),
		rec(model.LevelError),
		rec(model.LevelInfo),
		rec(model.LevelWarning),
		rec(model.LevelInfo),
	}

	c := Count(records)

	if got := c.Get(model.LevelInfo); got != 3 {
		t.Errorf("Get(INFO) = %d, want 3", got)
	}
	if got := c.Get(model.LevelError); got != 1 {
		t.Errorf("Get(ERROR) = %d, want 1", got)
	}
	if got := c.Get(model.LevelWarning); got != 1 {
		t.Errorf("Get(WARNING) = %d, want 1", got)
	}
	if got := c.Total(); got != len(records) {
		t.Errorf("Total() = %d, want %d", got, len(records))
	}
}

func TestCountAbsentLevelIsZero(t *testing.T) {
	c := Count([]model.Record{rec(model.LevelInfo)})

	if got := c.Get(model.LevelDebug); got != 0 {
		t.Errorf("Get(DEBUG) = %d, want 0", got)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1: absent levels must not be registered", got)
	}
}

func TestCountFirstOccurrenceOrder(t *testing.T) {
	records := []model.Record{
		rec(model.LevelWarning),
		rec(model.LevelInfo),
		rec(model.LevelWarning),
		rec(model.LevelError),
		rec(model.LevelInfo),
		rec(model.LevelDebug),
	}

	c := Count(records)

	want := []model.Level{model.LevelWarning, model.LevelInfo, model.LevelError, model.LevelDebug}
	if got := c.Levels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestCountEmpty(t *testing.T) {
	c := Count(nil)

	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
	if got := c.Total(); got != 0 {
		t.Errorf("Total() = %d, want 0", got)
	}
	if got := c.Levels(); len(got) != 0 {
		t.Errorf("Levels() = %v, want empty", got)
	}
}

func TestLevelsReturnsCopy(t *testing.T) {
	c := Count([]model.Record{rec(model.LevelInfo), rec(model.LevelError)})

	levels := c.Levels()
	levels[0] = model.LevelDebug

	want := []model.Level{model.LevelInfo, model.LevelError}
	if got := c.Levels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Levels() = %v after caller mutation, want %v", got, want)
	}
}

func TestAddIncrementally(t *testing.T) {
	c := Count(nil)
	c.Add(model.LevelError)
	c.Add(model.LevelError)
	c.Add(model.LevelInfo)

	if got := c.Get(model.LevelError); got != 2 {
		t.Errorf("Get(ERROR) = %d, want 2", got)
	}
	want := []model.Level{model.LevelError, model.LevelInfo}
	if got := c.Levels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}
