// Package refdata holds the static pools the generator draws from: people and
// team names, branch weights and service areas, price tables, and the
// apparel, ball, and trophy vocabularies.
package refdata

var FirstNames = []string{
	"Maria", "Juan", "Jose", "Rosa", "Ramon", "Ana", "Carlos", "Isabel",
	"Miguel", "Mercedes", "Luis", "Patricia", "Roberto", "Victoria",
	"Alfonso", "Stephanie", "Gabriel", "Angela", "Rafael", "Monica",
	"Fernando", "Carmen", "Ricardo", "Dolores", "Manuel", "Teresa",
	"Antonio", "Gloria", "Francisco", "Rita", "Pedro", "Concepcion",
	"Enrique", "Rosario", "Jorge", "Esperanza", "Alberto", "Amparo",
}

var LastNames = []string{
	"Santos", "Cruz", "dela Cruz", "Reyes", "Garcia", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Fernandez", "Ramirez", "Torres",
	"Rivera", "Gomez", "Diaz", "Navarro", "Morales", "Ruiz", "Ortiz",
	"Villanueva", "Castillo", "Ramos", "Mendoza", "Flores", "Bautista",
	"Aquino", "Castro", "Dela Rosa", "Perez",
}

var TeamNames = []string{
	"Manila Dragons", "Cavite Warriors", "Batangas Bulls", "Lemery Phoenix",
	"Calapan Knights", "Muzon Tigers", "Rosario Raptors", "Pinamalayan Panthers",
	"Bauan Badgers", "Calaca Crushers", "Metro Hawks", "Provincial Pride",
	"Thunder Strikers", "Phoenix Rising", "Golden Giants", "Silver Stallions",
	"Emerald Eagles", "Diamond Dragons", "Ruby Rebels", "Sapphire Stars",
	"Batangas City Titans", "San Pascual Sharks", "Calaca Cobras", "Lemery Lions",
	"Rosario Rhinos", "Muzon Mustangs", "Calapan Cougars", "Bauan Bears",
}

var StreetNames = []string{"Rizal", "Bonifacio", "Aguinaldo", "Luna", "Mabini", "Del Pilar", "Burgos", "Gomez"}

var PhonePrefixes = []string{"0917", "0927", "0937", "0947", "0957", "0967", "0977", "0987", "0997"}
