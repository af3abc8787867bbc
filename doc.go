// Package statekit wires configuration into the statekit packages.
//
// The packages under pkg/ are usable on their own. Kit is the convenience
// layer for applications that configure them from the environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	kit, err := statekit.New(cfg)
//	if err != nil {
//		return err
//	}
//	defer kit.Close()
//
//	manager := kit.NewManager(ctx)
//	states := asyncstate.FromSuspending(ctx, load, kit.ProducerOptions()...)
//
// Core packages:
//
//   - asyncstate: the Idle/Loading/Success/Error state and its producers
//   - updatable: last known data combined with the current activity
//   - jobs: keyed job manager with join and replace strategies, and Refresher
//   - async: cancellable futures and WithTimeBounds
//   - errmsg: presentable errors and the error normalizer
//
// Supporting packages: observable, broadcast, lifecycle, filecache, statesse,
// backoff, logger and config.
package statekit
