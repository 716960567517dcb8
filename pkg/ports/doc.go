/*
Package ports defines the driven ports (interfaces) of the gateway.

They decouple the request core from the outside world: the core never opens a socket
and never decides on its own whether a destructive operation may run.

# Key Interfaces

  - Transport: performs one outbound call and reports a distinguishable timeout or connection failure.
  - Guard: the single policy hook consulted before a sensitive operation is bound.
*/
package ports
