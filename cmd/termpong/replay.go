package main

import (
	"fmt"

	"github.com/lox/termpong/internal/replay"
)

type ReplayCmd struct {
	File string `arg:"" type:"existingfile" help:"Recording written by play --record"`
}

func (c *ReplayCmd) Run() error {
	rec, err := replay.Load(c.File)
	if err != nil {
		return err
	}

	snap, err := replay.Play(rec)
	fmt.Printf("Session:  %s\n", rec.Header.SessionID)
	fmt.Printf("Seed:     %d\n", rec.Header.Seed)
	fmt.Printf("Frames:   %d\n", len(rec.Steps))
	fmt.Printf("Recorded: %s\n", rec.Header.Final)
	fmt.Printf("Replayed: %s\n", snap.Score)
	return err
}
