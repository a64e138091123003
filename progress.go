package fmdl

import (
	"log"
	"strings"
)

// Progress observes training milestones. Implementations must not retain
// the slices they receive. The Trainer invokes all methods from the
// training goroutine.
type Progress interface {
	// EpochStart fires before an epoch seeds its codebook.
	EpochStart(epoch int)
	// EpochEnd fires after an epoch's commit pass with the codebook size
	// before and after it, and the number of accepted merges.
	EpochEnd(epoch, before, after, committed int)
	// Capped fires when the codebook exceeds the size cap and training
	// stops early.
	Capped(epoch, size int)
	// Samples carries segmented corpus lines in verbose mode.
	Samples(epoch int, lines []string)
}

type nopProgress struct{}

func (nopProgress) EpochStart(int)              {}
func (nopProgress) EpochEnd(int, int, int, int) {}
func (nopProgress) Capped(int, int)             {}
func (nopProgress) Samples(int, []string)       {}

// LogProgress reports training milestones through the standard log package.
type LogProgress struct{}

func (LogProgress) EpochStart(epoch int) {
	rule := strings.Repeat("-", 30)
	log.Printf("%s Epoch: [%d] %s", rule, epoch, rule)
}

func (LogProgress) EpochEnd(_, before, after, committed int) {
	log.Printf("Vocabulary size: %d -> %d (%d merges)", before, after, committed)
}

func (LogProgress) Capped(_, size int) {
	log.Printf("Vocabulary size %d exceeds cap, stopping", size)
}

func (LogProgress) Samples(_ int, lines []string) {
	for _, line := range lines {
		log.Printf("sample: %s", line)
	}
}
