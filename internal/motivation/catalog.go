package motivation

import "streakboard/internal/habit"

// Verses and Quotes back the daily pick when no generated queue is available.
var Verses = []habit.Verse{
	{Text: "I can do all things through Christ who strengthens me.", Reference: "Philippians 4:13"},
	{Text: "For God has not given us a spirit of fear, but of power and of love and of a sound mind.", Reference: "2 Timothy 1:7"},
	{Text: "Trust in the Lord with all your heart and lean not on your own understanding.", Reference: "Proverbs 3:5"},
	{Text: "Be strong and courageous. Do not be afraid; do not be discouraged, for the Lord your God will be with you wherever you go.", Reference: "Joshua 1:9"},
	{Text: "The Lord is my strength and my shield; my heart trusts in him, and he helps me.", Reference: "Psalm 28:7"},
	{Text: "But those who hope in the Lord will renew their strength. They will soar on wings like eagles.", Reference: "Isaiah 40:31"},
	{Text: "Cast all your anxiety on him because he cares for you.", Reference: "1 Peter 5:7"},
	{Text: "And we know that in all things God works for the good of those who love him.", Reference: "Romans 8:28"},
	{Text: "The Lord is close to the brokenhearted and saves those who are crushed in spirit.", Reference: "Psalm 34:18"},
	{Text: "Do not be anxious about anything, but in every situation, by prayer and petition, present your requests to God.", Reference: "Philippians 4:6"},
	{Text: "The joy of the Lord is your strength.", Reference: "Nehemiah 8:10"},
	{Text: "Commit to the Lord whatever you do, and he will establish your plans.", Reference: "Proverbs 16:3"},
	{Text: "He gives strength to the weary and increases the power of the weak.", Reference: "Isaiah 40:29"},
	{Text: "This is the day the Lord has made; let us rejoice and be glad in it.", Reference: "Psalm 118:24"},
	{Text: "Let us run with perseverance the race marked out for us, fixing our eyes on Jesus.", Reference: "Hebrews 12:1-2"},
	{Text: "The Lord will fight for you; you need only to be still.", Reference: "Exodus 14:14"},
	{Text: "Therefore do not worry about tomorrow, for tomorrow will worry about itself.", Reference: "Matthew 6:34"},
	{Text: "For I know the plans I have for you, declares the Lord, plans to prosper you and not to harm you.", Reference: "Jeremiah 29:11"},
	{Text: "The Lord is my shepherd, I lack nothing.", Reference: "Psalm 23:1"},
	{Text: "In their hearts humans plan their course, but the Lord establishes their steps.", Reference: "Proverbs 16:9"},
}

var Quotes = []habit.Quote{
	{Text: "Discipline is the bridge between goals and accomplishment.", Author: "Jim Rohn"},
	{Text: "The secret of getting ahead is getting started.", Author: "Mark Twain"},
	{Text: "Success is the sum of small efforts repeated day in and day out.", Author: "Robert Collier"},
	{Text: "You don't have to be great to start, but you have to start to be great.", Author: "Zig Ziglar"},
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
	{Text: "Your limitation is only your imagination.", Author: "Unknown"},
	{Text: "Push yourself, because no one else is going to do it for you.", Author: "Unknown"},
	{Text: "Great things never come from comfort zones.", Author: "Unknown"},
	{Text: "Dream it. Wish it. Do it.", Author: "Unknown"},
	{Text: "Success doesn't just find you. You have to go out and get it.", Author: "Unknown"},
	{Text: "The harder you work for something, the greater you'll feel when you achieve it.", Author: "Unknown"},
	{Text: "Dream bigger. Do bigger.", Author: "Unknown"},
	{Text: "Don't stop when you're tired. Stop when you're done.", Author: "Unknown"},
	{Text: "Wake up with determination. Go to bed with satisfaction.", Author: "Unknown"},
	{Text: "Do something today that your future self will thank you for.", Author: "Sean Patrick Flanery"},
	{Text: "Little things make big days.", Author: "Unknown"},
	{Text: "It's going to be hard, but hard does not mean impossible.", Author: "Unknown"},
	{Text: "Don't wait for opportunity. Create it.", Author: "Unknown"},
	{Text: "Sometimes we're tested not to show our weaknesses, but to discover our strengths.", Author: "Unknown"},
}
