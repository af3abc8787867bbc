// Package filecache persists single typed values in a byte storage.
//
// A Storage is a flat key/value store. Three implementations are provided:
// LocalStorage writes files below a base directory, S3Storage writes objects
// to an S3 bucket through aws-sdk-go-v2, and RedisStorage writes strings
// through go-redis. Keys are slash-separated and may not escape the storage
// root.
//
// Cache[T] binds a key to a Codec (JSONCodec or YAMLCodec) so callers deal in
// values instead of bytes:
//
//	storage, err := filecache.NewLocalStorage(".cache")
//	if err != nil {
//		return err
//	}
//	provider := filecache.NewProvider(storage)
//	profile, err := filecache.For[Profile](provider, "users/42/profile")
//	if err != nil {
//		return err
//	}
//	if err := profile.Set(ctx, p); err != nil {
//		return err
//	}
//	cached, ok := profile.Lookup(ctx)
//
// Get distinguishes a missing value (ErrCacheMiss) from bytes that no longer
// decode (ErrDecode). Lookup folds both into a miss, which is what a
// startup path seeding an updatable state usually wants.
package filecache
