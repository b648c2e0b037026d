package domain

import "time"

// relativeDate renders a date offset from today, keeping seed data looking
// recent regardless of when the store is first opened.
func relativeDate(daysOffset int) string {
	return time.Now().UTC().AddDate(0, 0, daysOffset).Format(DateLayout)
}

// Seeds returns the default contents of every collection, used when a
// backend has no persisted value for a key yet.
func Seeds() map[string]any {
	return map[string]any{
		CollectionSettings: Settings{
			HeroBgURL:  "/images/hero.jpg",
			LoginBgURL: "/images/login.jpg",
			LogoURL:    "/images/logo.png",
		},
		CollectionGallery: []GalleryItem{
			{ID: "g1", URL: "/images/gallery/assembly.jpg", Category: "MEETINGS", Title: "Monthly Assembly", Year: 2024},
			{ID: "g2", URL: "/images/gallery/feast.jpg", Category: "FEASTS", Title: "Annual Feast", Year: 2023},
			{ID: "g3", URL: "/images/gallery/committee.jpg", Category: "MEETINGS", Title: "Committee Discussion", Year: 2024},
			{ID: "g4", URL: "/images/gallery/cleaning.jpg", Category: "SERVICE", Title: "Community Cleaning", Year: 2023},
			{ID: "g5", URL: "/images/gallery/holiday.jpg", Category: "FEASTS", Title: "Traditional Holiday", Year: 2024},
			{ID: "g6", URL: "/images/gallery/volunteering.jpg", Category: "SERVICE", Title: "Youth Volunteering", Year: 2023},
		},
		CollectionLeadership: []LeadershipMember{
			{ID: "l1", Name: "Engineer Brhane B.", RoleKey: "landing.history.chairman", ImgURL: "/images/chairman.png"},
			{ID: "l2", Name: "W/ro Gal Qilet", RoleKey: "landing.history.secretary", ImgURL: "/images/secretary.jpg"},
			{ID: "l3", Name: "Instructor Atsbha T.", RoleKey: "login.treasurer", ImgURL: "/images/treasurer.jpg"},
		},
		CollectionMembers: []Member{
			{
				ID: "m00001", FullName: "Engineer Brhane B.", Email: "chairman@example.org",
				Phone: "+251 914 41 15 67", Role: RoleAdmin, Status: MemberActive,
				JoinDate: relativeDate(-180), Balance: RegistrationFee, Gender: "MALE",
				NotificationPreferences: DefaultNotificationPreferences(),
			},
			{
				ID: "m00002", FullName: "Instructor Atsbha T.", Email: "treasurer@example.org",
				Phone: "+251 911 22 33 44", Role: RoleTreasurer, Status: MemberActive,
				JoinDate: relativeDate(-150), Balance: RegistrationFee, Gender: "MALE",
				NotificationPreferences: DefaultNotificationPreferences(),
			},
			{
				ID: "m00003", FullName: "W/ro Gal Qilet", Email: "secretary@example.org",
				Phone: "+251 922 44 55 66", Role: RoleSecretary, Status: MemberActive,
				JoinDate: relativeDate(-120), Balance: RegistrationFee, Gender: "FEMALE",
				NotificationPreferences: DefaultNotificationPreferences(),
			},
			{
				ID: "m00008", FullName: "Engineer Temesgen G.", Email: "temesgen@example.org",
				Phone: "+251 914 82 51 74", Role: RoleMember, Status: MemberActive,
				JoinDate: relativeDate(-60), Balance: RegistrationFee, Gender: "MALE",
				NotificationPreferences: DefaultNotificationPreferences(),
			},
		},
		CollectionTransactions: []Transaction{
			{ID: "t1", MemberID: "m00001", MemberName: "Engineer Brhane B.", Date: relativeDate(-30), Amount: 100, Type: TypeContribution, Description: "Monthly Dues", Status: TransactionCompleted},
			{ID: "t2", MemberID: "m00002", MemberName: "Instructor Atsbha T.", Date: relativeDate(-25), Amount: 100, Type: TypeContribution, Description: "Monthly Dues", Status: TransactionCompleted},
			{ID: "t3", MemberID: "m00001", MemberName: "Engineer Brhane B.", Date: relativeDate(-1), Amount: 100, Type: TypeContribution, Description: "Monthly Dues", Status: TransactionCompleted},
		},
		CollectionClaims: []Claim{
			{ID: "c1", MemberID: "m00017", MemberName: "Sara Kebede", Type: ClaimFuneral, Description: "Passing of aunt", AmountRequested: 5000, Status: ClaimPending, DateFiled: relativeDate(-3)},
		},
	}
}
