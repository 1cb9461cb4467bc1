package catalog

// DemoPlaylistName is the playlist created alongside the demo tracks.
const DemoPlaylistName = "My Favorites"

// DemoTracks returns the tracks seeded on first launch.
// None of them reference an audio file.
func DemoTracks() []*Track {
	return []*Track{
		{ID: "S001", Title: "Beautiful Song", Artist: "Artist A", Album: "Album 1", Genre: "Pop", Year: 2020},
		{ID: "S002", Title: "Cheerful Music", Artist: "Artist B", Album: "Album 2", Genre: "Rock", Year: 2019},
		{ID: "S003", Title: "Night Melody", Artist: "Artist A", Album: "Album 3", Genre: "Jazz", Year: 2021},
		{ID: "S004", Title: "Adventure Rhythm", Artist: "Artist C", Album: "Album 4", Genre: "Electronic", Year: 2022},
		{ID: "S005", Title: "Rain Harmony", Artist: "Artist D", Album: "Album 5", Genre: "Ambient", Year: 2018},
	}
}

// DemoPlaylistIDs returns the track IDs of the demo playlist.
func DemoPlaylistIDs() []string {
	return []string{"S001", "S003"}
}
