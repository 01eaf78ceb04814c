// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package events turns dataset-updated notifications into dataset reloads.

Producers (an import job, a rating ingester) publish a DatasetUpdated
message on a NATS subject when the catalog or rating log changes. Every
animerec instance subscribes with a queue group of its own, so one message
reloads one instance per group. Instances that must all reload use distinct
queue groups.

Transport is Watermill. Production uses watermill-nats over core NATS; tests
use the in-process gochannel Pub/Sub.

Message handling:

  - malformed payload: acked and counted, redelivery would not help
  - reload failure: nacked so the broker redelivers
  - reload success: acked
*/
package events
