// Package lmclient provides the primary entry point for constructing a
// monitoring platform API client that implements the lmapi.Client interface.
//
// It layers credential resolution, LMv1 request signing, rate-limit handling,
// and paged collection fetching on top of the resource interfaces and types
// defined in the lmapi package. Most applications should import lmclient to
// build a client, then use the returned lmapi.Client to access resource
// clients, for example Devices(), Alerts(), Websites().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/lmtk-io/lmtk/pkg/lmapi"
//	  "github.com/lmtk-io/lmtk/pkg/lmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: the tenant's keypair comes from ~/.lmtk/credentials.yml.
//	  cli, err := lmclient.NewForAccount("acme")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an explicit keypair:
//	  cli, err = lmclient.NewWithKeypair("acme", "access-id", "access-key")
//	  if err != nil { log.Fatal(err) }
//
//	  devices, err := cli.Devices().List(ctx, &lmapi.ListOptions{Size: 10})
//	  if err != nil { log.Fatal(err) }
//	  _ = devices
//	}
//
// # Helpers
//
// The package also provides the convenience constructors NewForAccount and
// NewWithKeypair that wrap New with the appropriate configuration.
package lmclient
