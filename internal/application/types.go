package application

import "photocat/internal/domain"

// Re-export domain types for use by adapters
type EntryID = domain.EntryID
