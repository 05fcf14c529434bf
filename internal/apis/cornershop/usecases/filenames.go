package usecases

// Default export file names, prefixed with the store display name.

func (s *Store) OffersFileName() string      { return s.fileName("Offers") }
func (s *Store) DepartmentsFileName() string { return s.fileName("Departments") }
func (s *Store) AislesFileName() string      { return s.fileName("Aisles") }
func (s *Store) ProductsFileName() string    { return s.fileName("Products") }

// AisleFileName and DepartmentFileName take the entity id.
func (s *Store) AisleFileName(aisleID string) string           { return s.fileName(aisleID) }
func (s *Store) DepartmentFileName(departmentID string) string { return s.fileName(departmentID) }

func (s *Store) fileName(suffix string) string {
	name := s.catalog.DisplayName()
	if name == "" {
		name = s.catalog.BusinessID
	}
	return name + " " + suffix
}
