/*
Package domain contains the core domain models of the kopye scaffolder.

It defines the entities shared by the resolver and the materializer, and is kept free of
I/O so that every other package can depend on it.

# Key Entities

  - Question: A blueprint question (Text, Paragraph, Confirm, Select or MultiSelect) with an
    optional Dependency controlling its visibility.
  - Dependency: A Condition, All or Any expression over "question:value" predicates.
  - Answer / Answers: The tagged answer values, kept in the order they were collected.
  - VirtualEntry / VirtualFS: The in-memory staging of the output tree.
*/
package domain
