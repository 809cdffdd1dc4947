package main

// DeleteLedger is the node-deletion history: each entry is the snapshot
// batch of one confirmed delete, undone and redone atomically. Process
// memory only; a loaded document starts with empty history.
type DeleteLedger struct {
	undo [][]Node
	redo [][]Node
}

// Push records a confirmed deletion and invalidates the redo side.
func (l *DeleteLedger) Push(batch []Node) {
	if len(batch) == 0 {
		return
	}
	l.undo = append(l.undo, batch)
	l.redo = l.redo[:0]
}

// Undo pops the most recent batch for re-insertion. Returns nil when
// there is nothing to undo.
func (l *DeleteLedger) Undo() []Node {
	if len(l.undo) == 0 {
		return nil
	}
	batch := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, batch)
	return batch
}

// Redo pops the most recently undone batch; the caller removes exactly
// those ids again.
func (l *DeleteLedger) Redo() []Node {
	if len(l.redo) == 0 {
		return nil
	}
	batch := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, batch)
	return batch
}

func batchIDs(batch []Node) []string {
	ids := make([]string, len(batch))
	for i := range batch {
		ids[i] = batch[i].ID
	}
	return ids
}

// Stroke history lives on the App as a single redo list: undo pops the
// last completed stroke off the document, redo re-appends it, and a newly
// completed stroke clears the redo side. See App.UndoStroke/RedoStroke.
