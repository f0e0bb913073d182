// Package firestorefake is an in-process, in-memory document database that
// emulates the observable behavior of a hierarchical document/collection
// store: documents addressed by slash-delimited paths, typed field values,
// queries, and buffered multi-document transactions.
//
// It exists so calling code can exercise realistic create/read/update/delete
// and query workflows without a network-connected backend. Nothing persists
// across process restarts and no multi-client consistency is provided.
//
//	client := firestorefake.New()
//	doc := client.Collection("users").Doc("alice")
//	_ = doc.Set(ctx, map[string]interface{}{"score": int64(10)})
//	snap, _ := doc.Get(ctx)
package firestorefake
