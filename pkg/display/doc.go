/*
Package display owns the caller side of the brochure client: the single logical
execution context every display write runs on (Loop), a simple text sink (Label),
and the mapping from fetch outcomes to the title and price sinks (Binding).
*/
package display
