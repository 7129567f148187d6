package txparams

// WaitPendingFetches blocks until all the started fetches have completed
func (store *transactionParameterStore) WaitPendingFetches() {
	store.tasks.Wait()
}
