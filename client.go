// ABOUTME: Main client for the feedsync library synchronizing items with a feed aggregation server
// ABOUTME: Resolves configuration, authenticates once and exposes the sync engine operations

// Package feedsync synchronizes read and saved article state with a
// self-hosted feed aggregator over the fever or greader protocols.
package feedsync

import (
	"context"
	"errors"
	"io"
	"sync"

	"feedsync/core/domain"
	"feedsync/core/fever"
	"feedsync/core/greader"
	"feedsync/core/interfaces"
	coresync "feedsync/core/sync"
	"feedsync/pkg/config"
)

// Client is the main entry point for the feedsync library. It is safe for
// concurrent use; the session it holds never changes after NewClient returns.
type Client struct {
	cfg         *config.Config
	session     interfaces.Session
	engine      *coresync.Engine
	checkpoints *coresync.CheckpointStore
	logger      interfaces.Logger

	closers []io.Closer

	mu     sync.RWMutex
	closed bool
}

// NewClient resolves configuration, builds the collaborators and authenticates.
// Authentication happens exactly once; a failure leaves nothing open.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Resolve(o.overrides)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = DefaultLogger(cfg.Log, cfg.Server.Verbose)
	}

	transport := o.transport
	if transport == nil {
		transport = DefaultTransport(cfg.HTTP, logger)
	}

	var closers []io.Closer
	cache := o.cache
	if cache == nil {
		cache, err = DefaultCache(cfg.Cache, logger)
		if err != nil {
			return nil, err
		}
		if closer, ok := cache.(io.Closer); ok {
			closers = append(closers, closer)
		}
	}

	deps := interfaces.Dependencies{
		Transport: transport,
		Cache:     cache,
		Logger:    logger,
	}
	creds := domain.Credentials{
		Host:     cfg.Server.Host,
		Username: cfg.Server.Username,
		Password: cfg.Server.Password,
	}

	var auth interfaces.Authenticator
	switch domain.Protocol(cfg.Server.Protocol) {
	case domain.ProtocolGReader:
		auth = greader.NewAuthenticator(creds, cfg.Server.ReaderPath, deps)
	default:
		auth = fever.NewAuthenticator(creds, cfg.Server.FeverPath, deps)
	}

	session, err := auth.Authenticate(ctx)
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	logger.Info("Connected to aggregation server", map[string]interface{}{
		"host":     cfg.Server.Host,
		"protocol": cfg.Server.Protocol,
	})

	return &Client{
		cfg:         cfg,
		session:     session,
		engine:      coresync.NewEngine(session, logger),
		checkpoints: coresync.NewCheckpointStore(cache),
		logger:      logger,
		closers:     closers,
	}, nil
}

// Close releases the cache opened by NewClient. Caches passed in with
// WithCache are left to the caller.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return closeAll(c.closers)
}

// Protocol returns the wire protocol in use
func (c *Client) Protocol() Protocol {
	return c.session.Protocol()
}

// Session exposes the authenticated session for calls the client does not wrap
func (c *Client) Session() interfaces.Session {
	return c.session
}

// GetItemsFromIDs fetches the items with the given IDs, sorted by ID
func (c *Client) GetItemsFromIDs(ctx context.Context, ids []int64) ([]Item, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.engine.GetItemsFromIDs(ctx, ids)
}

// GetItemsFromDates fetches every item in (since, until], sorted by ID.
// A zero until means now.
func (c *Client) GetItemsFromDates(ctx context.Context, since, until Bound) ([]Item, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.engine.GetItemsFromDates(ctx, since, until)
}

// SetMark marks an item read, unread, saved or unsaved
func (c *Client) SetMark(ctx context.Context, action MarkAction, id int64) (*MarkResult, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.engine.SetMark(ctx, action, id)
}

// UnreadItems fetches all unread items
func (c *Client) UnreadItems(ctx context.Context) ([]Item, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.engine.UnreadItems(ctx)
}

// SavedItems fetches all saved items
func (c *Client) SavedItems(ctx context.Context) ([]Item, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.engine.SavedItems(ctx)
}

// Pull fetches the items that arrived since the last Pull with the same name.
// since is only consulted on the first run.
func (c *Client) Pull(ctx context.Context, name string, since Bound) ([]Item, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.engine.Pull(ctx, c.checkpoints, name, since)
}

// Checkpoint returns the saved checkpoint for name, or nil
func (c *Client) Checkpoint(ctx context.Context, name string) (*Checkpoint, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.checkpoints.Load(ctx, name)
}

// ResetCheckpoint forgets the checkpoint for name so the next Pull starts over
func (c *Client) ResetCheckpoint(ctx context.Context, name string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	return c.checkpoints.Reset(ctx, name)
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
