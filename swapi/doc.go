// Package swapi provides a client for the public Star Wars API.
//
// The API is read-only. Every resource is a JSON object: the root lists the
// categories, each category is a paginated collection under "results", and
// entities reference each other by absolute URL.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := swapi.NewClient(
//		"https://swapi.dev/api/",
//		logger,
//		swapi.WithTimeout(10*time.Second),
//		swapi.WithMaxRetries(2),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	film, err := client.Find(ctx, swapi.CategoryFilms, "A New Hope")
//	if errors.Is(err, swapi.ErrNotFound) {
//		// no match
//	}
//
//	planets, err := client.Resolve(ctx, film.Strings("planets"))
//
// # Fetching
//
// FetchEndpoint takes a path relative to the base URL, FetchReference takes
// an absolute URL found inside another entity. Both fail with *APIError on a
// non-200 status unless the client was built WithLenientStatus(true), in
// which case the status is only logged.
//
// # Error Handling
//
//   - ErrInvalidConfig: bad base URL
//   - ErrNotFound: Find matched nothing
//   - ErrInvalidResponse: body is not the expected JSON
//   - ErrInvalidReference: reference is not an absolute URL
//   - APIError: non-200 status with the body attached
package swapi
