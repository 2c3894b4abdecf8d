package apps

// Catalogue is the built-in content seeded on every start. It is never
// persisted.
type Catalogue struct {
	Favorites   []Entry
	Apps        []Entry
	Collections []Collection
}

func preset(name, icon, background, description string) Entry {
	return Entry{Name: name, Icon: icon, Background: background, Description: description}
}

// DefaultCatalogue returns the shipped catalogue: no preset favorites,
// thirteen apps and five collections.
func DefaultCatalogue() Catalogue {
	return Catalogue{
		Favorites: nil,
		Apps: []Entry{
			preset("Visual Studio", "&#xE943;", "Blue", "IDE"),
			preset("Notepad++", "&#xE8A5;", "Orange", "Text editor"),
			preset("Chrome", "&#xE774;", "Red", "Web browser"),
			preset("Git", "&#xE8AB;", "Green", "Version control"),
			preset("Discord", "&#xE8BD;", "Purple", "Chat"),
			preset("Postman", "&#xE968;", "DarkBlue", "API testing"),
			preset("Docker", "&#xE8C7;", "DarkCyan", "Container platform"),
			preset("Slack", "&#xE8F2;", "DarkMagenta", "Team collaboration"),
			preset("VS Code", "&#xE943;", "LightBlue", "Lightweight editor"),
			preset("Figma", "&#xE8EF;", "Brown", "UI design"),
			preset("Adobe XD", "&#xE8F0;", "Crimson", "Prototyping"),
			preset("Sketch", "&#xE8F1;", "Gold", "Interface design"),
			preset("Notion", "&#xE8A5;", "Gray", "Notes and wikis"),
		},
		Collections: []Collection{
			{
				Name: "Design Tools", Icon: "🎨", Background: "CornflowerBlue",
				Apps: []Entry{
					preset("Figma", "&#xE8EF;", "Brown", "UI design"),
					preset("Adobe XD", "&#xE8F0;", "Crimson", "Prototyping"),
					preset("Sketch", "&#xE8F1;", "Gold", "Interface design"),
					preset("Photoshop", "&#xE91B;", "DarkCyan", "Image editing"),
					preset("Illustrator", "&#xE91C;", "Orange", "Vector drawing"),
					preset("Canva", "&#xE8EF;", "Green", "Online design"),
					preset("Blender", "&#xE7F8;", "DarkOrange", "3D modelling"),
					preset("GIMP", "&#xE91B;", "Purple", "Free image editor"),
				},
			},
			{
				Name: "Dev Tools", Icon: "💻", Background: "ForestGreen",
				Apps: []Entry{
					preset("Visual Studio", "&#xE943;", "Blue", "IDE"),
					preset("VS Code", "&#xE943;", "LightBlue", "Lightweight editor"),
					preset("IntelliJ IDEA", "&#xE943;", "Maroon", "Java IDE"),
					preset("Git", "&#xE8AB;", "Green", "Version control"),
					preset("Docker", "&#xE8C7;", "DarkCyan", "Container platform"),
					preset("Postman", "&#xE968;", "DarkBlue", "API testing"),
				},
			},
			{
				Name: "Games & Entertainment", Icon: "🎮", Background: "Crimson",
				Apps: []Entry{
					preset("Steam", "&#xE8C1;", "DarkBlue", "Game platform"),
					preset("Discord", "&#xE8BD;", "Purple", "Gaming chat"),
					preset("Unity", "&#xE7F8;", "DarkSlateBlue", "Game engine"),
					preset("OBS Studio", "&#xE714;", "DarkGreen", "Streaming and recording"),
					preset("Twitch", "&#xE8BD;", "MediumPurple", "Live streaming"),
				},
			},
			{
				Name: "System Tools", Icon: "🔧", Background: "DarkOrange",
				Apps: []Entry{
					preset("7-Zip", "&#xE8B5;", "DarkBlue", "Archiver"),
					preset("Everything", "&#xE721;", "Green", "File search"),
					preset("PowerToys", "&#xE8C1;", "Blue", "System utilities"),
					preset("TaskManager", "&#xE7EF;", "Red", "Task manager"),
				},
			},
			{
				Name: "Office", Icon: "📊", Background: "MediumPurple",
				Apps: []Entry{
					preset("Microsoft Office", "&#xE8D7;", "Blue", "Office suite"),
					preset("Slack", "&#xE8F2;", "DarkMagenta", "Team collaboration"),
					preset("Zoom", "&#xE8AA;", "DarkBlue", "Video meetings"),
					preset("Notion", "&#xE8A5;", "Gray", "Notes and wikis"),
				},
			},
		},
	}
}
