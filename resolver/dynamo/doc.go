// Package dynamo provides a metadata resolver backed by a DynamoDB table.
//
// It serves deployments where item content lives in object storage but
// metadata is maintained in a table keyed by item identifier, so filtering
// never has to open the objects at all.
package dynamo
