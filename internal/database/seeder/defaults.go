package seeder

func Defaults() []Seeder {
	return []Seeder{
		CuratedEventsSeeder{},
	}
}
