package notify

import "golang.org/x/text/language"

var german = catalog{
	tag: language.German,
	templates: [numKeys]string{
		CreditsNoTechReceive: "(-p%0I)<<< Raumdock-Nachricht >>>\n\n" +
			"VON: %0P\n  Sternenbasis %0d\n\n" +
			"Unsere Technologie reicht nicht aus,\n" +
			"um Geldtransfers zu empfangen.\n\n" +
			"Benötigte Summe: %1d\n",
		CreditsNoTechSend: "(-p%0I)<<< Raumdock-Nachricht >>>\n\n" +
			"VON: %0P\n  Sternenbasis %0d\n\n" +
			"Unsere Technologie reicht nicht aus,\n" +
			"um Geldtransfers zu senden.\n\n" +
			"Benötigte Summe: %1d\n",
		CreditsTransferred: "(-z%0I)<<< Raumdock-Nachricht >>>\n\n" +
			"VON: %0P\n  Sternenbasis %0d\n\n" +
			"Wir haben %2d mc an die\n" +
			"Sternenbasis bei Planet %1d,\n" +
			"%1P überwiesen.\n",

		MinefieldLaid: "(-l%1I)<<< Raumdock-Nachricht >>>\n\n" +
			"VON: %0P\n  Sternenbasis %0d\n\n" +
			"Wir haben unsere Torpedos\n" +
			"in Weltraumminen umgewandelt\n" +
			layResultDE,
		MinefieldLaidWeb: "(-l%1I)<<< Raumdock-Nachricht >>>\n\n" +
			"VON: %0P\n  Sternenbasis %0d\n\n" +
			"Wir haben unsere Torpedos\n" +
			"in Netzminen umgewandelt\n" +
			layResultDE,
		MinefieldSweptHeader: "(-p%0I)<<< Sternenbasis-Nachricht >>>\n\n" +
			"Von: %0P\n  Sternenbasis %0d\n\n" +
			"Feindliches Minenfeld #%1d entdeckt\n" +
			"bei ( %2d, %3d )\n" +
			"Es sind %4A Minen!\n" +
			"Durchmesser des Feldes: %5d Lj.\n",
		MinefieldSweptHeaderWeb: "(-p%0I)<<< Sternenbasis-Nachricht >>>\n\n" +
			"Von: %0P\n  Sternenbasis %0d\n\n" +
			"Feindliches Minenfeld #%1d entdeckt\n" +
			"bei ( %2d, %3d )\n" +
			"Es sind %4A NETZ-Minen!\n" +
			"Durchmesser des Feldes: %5d Lj.\n",
		MinefieldSweptBeams: "Wir räumen mit Strahlenwaffen.\n" +
			"%6d Minen zerstört.\n" +
			"%7d Einheiten verbleiben.\n",
		MinefieldSweptFighters: "Wir räumen mit Jägern.\n" +
			"%6d Minen zerstört.\n" +
			"%7d Einheiten verbleiben.\n",
		MinefieldScoopedHeader: "(-p%0I)<<< Sternenbasis-Nachricht >>>\n\n" +
			"Von: %0P\n  Sternenbasis %0d\n\n" +
			"Eigenes Minenfeld #%1d entdeckt\n" +
			"bei ( %2d, %3d )\n" +
			"Durchmesser des Feldes: %4d Lj.\n",
		MinefieldScoopedHeaderWeb: "(-p%0I)<<< Sternenbasis-Nachricht >>>\n\n" +
			"Von: %0P\n  Sternenbasis %0d\n\n" +
			"Eigenes NETZ-Minenfeld #%1d entdeckt\n" +
			"bei ( %2d, %3d )\n" +
			"Durchmesser des Feldes: %4d Lj.\n",
		MinefieldScooped: "Wir sammeln Minen ein.\n" +
			"%5d Torpedos hergestellt.\n",

		LoadNotPermitted: fleetHeaderDE +
			"Wir sollten Raumschiffteile laden.\n" +
			"Leider kann unser Schiff keine\n" +
			"Raumschiffteile transportieren.\n",
		LoadNoParts: fleetHeaderDE +
			"Wir sollten Raumschiffteile laden.\n" +
			"Leider hatte die Sternenbasis #%1d\n" +
			"bei %1P\n" +
			"keine passenden Teile auf Lager.\n",
		LoadConflict: fleetHeaderDE +
			"Wir sollten Raumschiffteile laden.\n" +
			"Leider haben wir bereits Teile\n" +
			"einer anderen Art an Bord.\n",
		LoadNoSpace: fleetHeaderDE +
			"Wir sollten Raumschiffteile laden.\n" +
			"Leider war in unserem Frachtraum\n" +
			"kein Platz mehr.\n",
		LoadSuccess: fleetHeaderDE +
			"Wir haben %2d Teile von der\n" +
			"Sternenbasis #%1d\n" +
			"bei %1P geladen.\n",
		UnloadNoParts: fleetHeaderDE +
			"Wir sollten Raumschiffteile\n" +
			"entladen, hatten aber nichts\n" +
			"an Bord.\n",
		UnloadSuccess: fleetHeaderDE +
			"Wir haben %2d Teile an die\n" +
			"Sternenbasis #%1d\n" +
			"bei %1P abgegeben.\n",
		TrimmedComponents: fleetHeaderDE +
			"Wir sind überladen!\n" +
			"Wir mussten %1d Teile mit\n" +
			"insgesamt %2d kt abwerfen!\n",
		TrimmedCargo: fleetHeaderDE +
			"Wir sind überladen!\n" +
			"Wir mussten %1d kt Fracht abwerfen!\n",
		TransportReport: "(-f%0I)<<< Spezialtransport >>>\n\n" +
			"VON: %0S\n  Schiff %0d\n\n" +
			"Wir transportieren zur Zeit Teile\n" +
			"mit einem Gesamtgewicht von %1d kt:\n",
		TransportReportContinued: "(-f%0I)<<< Spezialtransport >>>\n\n" +
			"(Fortsetzung der Liste)\n",

		ConfigReport: "(-h000)<<< Starbase Reloaded >>>\n\n" +
			"Aktuelle Konfiguration:\n",
		ConfigReportContinued: "(-h000)<<< Starbase Reloaded >>>\n\n" +
			"(Fortsetzung der Konfiguration)\n",

		ContinuedOnNextPage: "(Fortsetzung auf der nächsten Seite)\n",
	},
}

const (
	fleetHeaderDE = "(-s%0I)<<< Flottennachricht >>>\n\n" +
		"VON: %0S\n  Schiff %0d\n\n"

	layResultDE = "und in einem Feld mit Mittelpunkt\n" +
		"bei ( %2d , %3d ) gelegt\n" +
		" %4d Minen wurden gelegt\n" +
		"Minenfeld Nr. %1d enthält jetzt\n" +
		" %5d Minen und hat einen Radius\n" +
		" von %6d Lichtjahren\n"
)
