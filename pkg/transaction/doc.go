/*
Package transaction records filesystem mutations and undoes them on cancellation.

A Transaction starts Active and is finalized exactly once, either by Commit (the undo log
is discarded) or by Cancel (the undo log is replayed newest first). Close is meant for
defer: it cancels an Active transaction and does nothing on a finalized one.

	tx := transaction.New()
	defer tx.Close()

	if err := os.Mkdir("out", 0o755); err != nil {
		return err
	}
	tx.RecordRemoveDir("out")
	// ...
	return tx.Commit()
*/
package transaction
