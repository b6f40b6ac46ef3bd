// Package core contains the protocol and synchronization logic of feedsync.
// It has no dependency on a concrete HTTP client, cache or logger; those are
// injected through the interfaces package.
//
// The core package is organized into several sub-packages:
//
// - domain: Items, credentials, mark actions and pagination bounds
// - fever: Keyed authenticator and session for the fever API
// - greader: Token authenticator and session for the Google Reader API
// - sync: Batch retrieval, date pagination, marking and checkpointed pulls
// - errors: Typed errors shared by every layer
// - interfaces: Contracts for transport, cache, logger and protocol sessions
//
// # Usage Example
//
//	import (
//	    "feedsync/core/fever"
//	    "feedsync/core/interfaces"
//	    "feedsync/core/sync"
//	)
//
//	deps := interfaces.Dependencies{
//	    Transport: myTransport, // implements interfaces.Transport
//	    Logger:    myLogger,    // implements interfaces.Logger
//	}
//
//	auth := fever.NewAuthenticator(creds, "", deps)
//	session, err := auth.Authenticate(ctx)
//	if err != nil {
//	    return err
//	}
//
//	engine := sync.NewEngine(session, myLogger)
//	items, err := engine.GetItemsFromIDs(ctx, []int64{101, 102, 103})
//
package core
