// Package services contains the person data-access services used by the
// anagrafe CLI.
//
//   - Gateway: single-entity read/create/update/delete against /persons.
//   - Resolver: search with endpoint fallback and local re-filtering.
//   - PersonService: the cached coordinator combining both, which keeps the
//     read cache consistent with every successful mutation.
//
// All methods honour context cancellation; validation failures are reported
// before any network call.
package services
