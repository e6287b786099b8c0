/*
Package ports defines the driven ports (interfaces) of the kopye engine.

These interfaces decouple the copy pipeline from external implementations, allowing
answers of committed runs to be kept in different backends.

# Key Interfaces

  - AnswerStore: Persists the answers of a committed run so a later run can replay them.
*/
package ports
