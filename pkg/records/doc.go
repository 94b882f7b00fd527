// Package records holds the local mirror of FormBuilder data: templates,
// their questions and the derived display fields, plus the repository
// interfaces the reconciler and the wizard write through.
//
// Records are plain values. Persistence lives behind Store and Tx;
// implementations are in pkg/records/memory and internal/store/sqlite.
package records
