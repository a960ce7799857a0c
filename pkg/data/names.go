package data

// DriverNames are handed out to the computer drivers
var DriverNames = []string{
	"Griff", "Jake", "Tina", "Rocco", "Skeeter", "Mona", "Dash", "Hollis",
	"Buzz", "Kit", "Marlo", "Vance", "Duke", "Pip", "Trixie", "Boone",
	"Sable", "Ringo", "Lulu", "Cash", "Nova", "Axel", "Wren", "Gus",
}
