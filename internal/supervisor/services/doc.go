// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services adapts Marquee components to suture.Service.

Each wrapper turns a component's own lifecycle into Serve(ctx) error:

  - HTTPServerService: ListenAndServe plus a bounded graceful Shutdown
  - AuditService: the event bus audit consumer's Run loop

Wrappers implement fmt.Stringer so supervisor logs name the service.
*/
package services
