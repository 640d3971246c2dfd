// Package node adapts in-process endpoints (automation logic, panels,
// bridges) onto the hub's subscription model. A Handle is the consumer
// identity for one endpoint; binding it to a device wires state pushes
// or status tracking without the endpoint knowing hub internals.
package node
